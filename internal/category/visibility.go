package category

import "go-leave/internal/identity"

// MenstrualLeaveName adalah kategori khusus perempuan; disembunyikan dari
// listing kategori dan saldo untuk user non-perempuan.
const MenstrualLeaveName = "生理假"

// IsVisible menentukan apakah satu kategori boleh tampil untuk gender tertentu.
func IsVisible(gender, categoryName string) bool {
	if categoryName != MenstrualLeaveName {
		return true
	}
	return gender == identity.GenderFemale
}

// VisibleCategories menyaring kategori berdasarkan gender user.
// Satu-satunya tempat aturan visibilitas ini didefinisikan.
func VisibleCategories(gender string, cats []Category) []Category {
	visible := make([]Category, 0, len(cats))
	for _, c := range cats {
		if IsVisible(gender, c.Name) {
			visible = append(visible, c)
		}
	}
	return visible
}
