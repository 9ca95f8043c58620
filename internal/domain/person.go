package domain

// Person is an end-user identified by email, created lazily on first contact
// with any integrated site. One document per email across all companies.
type Person struct {
	ID    string
	Email string
}
