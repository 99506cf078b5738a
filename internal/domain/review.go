package domain

type Review struct {
	ID      int64  `json:"id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Person  Person `json:"person"`
	Hotel   Hotel  `json:"hotel"`
}
