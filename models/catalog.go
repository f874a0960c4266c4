package models

// Governorates are the districts a user can register under.
var Governorates = []string{
	"وسط البلد", "الزمالك", "المعادي", "مدينة نصر",
	"المرج", "حلوان", "السيدة زينب",
	"شبرا", "المطرية",
}

// ServiceCategories maps each category to the professions it covers.
var ServiceCategories = map[string][]string{
	"خدمات فنية": {
		"سباك", "نجار", "كهربائي", "ميكانيكي", "حداد",
		"فني تكييفات", "نقاش", "ترزي",
	},
	"خدمات صحية": {
		"طبيب عام", "صيدلي", "أخصائي تغذية",
		"ممرض", "أخصائي علاج طبيعي", "طبيب أسنان",
	},
	"خدمات عامة": {
		"سوبر ماركت", "مطعم", "كافيه", "مولات",
	},
	"خدمات أخرى": {
		"عطار", "جزار", "فكهاني", "خضري",
		"محل ألبان",
	},
}

// SubscriptionFees are the monthly tiers a provider can subscribe at.
var SubscriptionFees = []string{"100 جنيه", "200 جنيه", "300 جنيه"}

func IsValidGovernorate(g string) bool {
	for _, v := range Governorates {
		if v == g {
			return true
		}
	}
	return false
}

func IsValidCategory(c string) bool {
	_, ok := ServiceCategories[c]
	return ok
}

// IsValidProfession checks that the profession belongs to the category.
func IsValidProfession(category, profession string) bool {
	for _, p := range ServiceCategories[category] {
		if p == profession {
			return true
		}
	}
	return false
}

func IsValidSubscriptionFee(fee string) bool {
	for _, v := range SubscriptionFees {
		if v == fee {
			return true
		}
	}
	return false
}
