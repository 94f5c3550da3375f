package domain

// Districts lists the districts a grievance may be filed against.
var Districts = []string{
	"Bilaspur", "Chamba", "Hamirpur", "Kangra", "Kinnaur", "Kullu",
	"Lahaul and Spiti", "Mandi", "Shimla", "Sirmaur", "Solan", "Una",
}

// Categories lists the grievance categories.
var Categories = []string{
	"Roads & Transport",
	"Water Supply",
	"Electricity",
	"Health & Sanitation",
	"Education",
	"Social Welfare",
	"Police & Law",
	"Others",
}

const (
	MaxDescriptionLength = 5000
	MaxAttachments       = 3
)

// GrievanceDraft is the form state collected by the grievance wizard.
type GrievanceDraft struct {
	District string `json:"district" validate:"required,district"`
	Location string `json:"location" validate:"required"`
	Category string `json:"category" validate:"required,category"`

	Subject           string   `json:"subject"           validate:"required,max=200"`
	Description       string   `json:"description"       validate:"required,max=5000"`
	AttachedFileNames []string `json:"attachedFileNames" validate:"max=3,dive,required"`
	IsAnonymized      bool     `json:"isAnonymized"`
}

// IsDistrict reports whether s is a known district.
func IsDistrict(s string) bool {
	return contains(Districts, s)
}

// IsCategory reports whether s is a known category.
func IsCategory(s string) bool {
	return contains(Categories, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
