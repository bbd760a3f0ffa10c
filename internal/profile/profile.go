package profile

// DefaultCountry is preselected on the form and used when a submission
// leaves the country blank.
const DefaultCountry = "Nepal"

// Provinces are the labels offered by the province selector.
var Provinces = []string{
	"Province 1",
	"Province 2",
	"Province 3",
	"Province 4",
	"Province 5",
	"Province 6",
	"Province 7",
}

// Profile is the persisted record. The JSON names are the storage format.
type Profile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DOB            string `json:"dob"`
	City           string `json:"city"`
	District       string `json:"district"`
	Province       string `json:"province"`
	Country        string `json:"country"`
	ProfilePicture string `json:"profilePicture"`
}

func isProvince(value string) bool {
	for _, p := range Provinces {
		if p == value {
			return true
		}
	}
	return false
}
