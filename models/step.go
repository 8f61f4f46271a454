package models

// Step is one screen of the onboarding wizard.
type Step struct {
	ID          int    `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Subtitle    string `bson:"subtitle" json:"subtitle"`
	Description string `bson:"description" json:"description"`
	Image       string `bson:"image" json:"image"`
	Alt         string `bson:"alt" json:"alt"`
}
