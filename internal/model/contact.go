package model

// Person is a customer/tenant row in contacts/people.csv.
type Person struct {
	ID    int
	Name  string
	Email string
	Phone string
}

// Unit is a rentable unit row in contacts/units.csv.
type Unit struct {
	ID     int
	Name   string
	Number string
}
