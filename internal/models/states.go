package models

// States lists the region codes offered by the table's state select.
var States = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut",
	"Delaware", "Florida", "Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa",
	"Kansas", "Kentucky", "Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan",
	"Minnesota", "Mississippi", "Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire",
	"New Jersey", "New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
	"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington", "West Virginia",
	"Wisconsin", "Wyoming", "Puerto Rico",
}

// SampleUsers seeds an empty store on first read.
func SampleUsers() []User {
	return []User{
		{ID: "9s41rp", FirstName: "Kelvin", LastName: "Langosh", Email: "Jerod14@hotmail.com", State: "Ohio"},
		{ID: "08m6rx", FirstName: "Molly", LastName: "Purdy", Email: "Hugh.Dach79@hotmail.com", State: "Rhode Island"},
		{ID: "5ymtrc", FirstName: "Henry", LastName: "Lynch", Email: "Camden.Macejkovic@yahoo.com", State: "California"},
		{ID: "ek5b97", FirstName: "Glenda", LastName: "Douglas", Email: "Eric0@yahoo.com", State: "Montana"},
		{ID: "xxtydd", FirstName: "Leone", LastName: "Williamson", Email: "Ericka_Mueller52@yahoo.com", State: "Colorado"},
		{ID: "wzxj9m", FirstName: "Mckenna", LastName: "Friesen", Email: "Veda_Feeney@yahoo.com", State: "New York"},
		{ID: "21dwtz", FirstName: "Wyman", LastName: "Jast", Email: "Melvin.Pacocha@yahoo.com", State: "Montana"},
		{ID: "o8oe4k", FirstName: "Janick", LastName: "Willms", Email: "Delfina12@gmail.com", State: "Nebraska"},
	}
}
