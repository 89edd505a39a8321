package category

type CategoryResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	ResetPolicy        string  `json:"reset_policy"`
	EffectiveStartDate *string `json:"effective_start_date,omitempty"`
	EffectiveEndDate   *string `json:"effective_end_date,omitempty"`
}
