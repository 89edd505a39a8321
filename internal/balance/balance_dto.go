package balance

type BalanceResponse struct {
	CategoryID      string `json:"category_id"`
	CategoryName    string `json:"category_name"`
	ResetPolicy     string `json:"reset_policy"`
	RemainingAmount int    `json:"remaining_amount"`
}
