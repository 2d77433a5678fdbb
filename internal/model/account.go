package model

// Account maps a statement feed to an institution.
type Account struct {
	ID          int
	Name        string
	Institution InstitutionKind
	LastFour    string
}
