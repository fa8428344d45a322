package domain

import (
	"time"
)

// SocialLink is a single entry of a user's social links list.
type SocialLink struct {
	Title string `json:"title" bson:"title"`
	Link  string `json:"link" bson:"link"`
	Icon  string `json:"icon" bson:"icon"`
}

// RatedSkill is a skill with a numeric self rating.
type RatedSkill struct {
	Title      string  `json:"title" bson:"title"`
	Rating     float64 `json:"rating" bson:"rating"`
	Experience string  `json:"experience" bson:"experience"`
}

// Education is one item of the user's education history. Items carry their
// own generated id so a single item can be replaced or removed regardless of
// array position.
type Education struct {
	ID                 string `json:"_id" bson:"_id"`
	Degree             string `json:"degree" bson:"degree"`
	UniversityName     string `json:"universityName" bson:"universityName"`
	UniversityLocation string `json:"universityLocation" bson:"universityLocation"`
	Description        string `json:"description,omitempty" bson:"description,omitempty"`
	StartOn            Date   `json:"startOn" bson:"startOn"`
	CompletedOn        *Date  `json:"completedOn,omitempty" bson:"completedOn,omitempty"`
	IsCurrent          bool   `json:"isCurrent,omitempty" bson:"isCurrent,omitempty"`
}

// Experience is one item of the user's work history, identified like
// Education items.
type Experience struct {
	ID              string   `json:"_id" bson:"_id"`
	Title           string   `json:"title" bson:"title"`
	Designation     string   `json:"designation" bson:"designation"`
	CompanyName     string   `json:"companyName" bson:"companyName"`
	CompanyLocation string   `json:"companyLocation" bson:"companyLocation"`
	Description     []string `json:"description,omitempty" bson:"description,omitempty"`
	StartOn         Date     `json:"startOn" bson:"startOn"`
	ExitOn          *Date    `json:"exitOn,omitempty" bson:"exitOn,omitempty"`
	IsCurrent       bool     `json:"isCurrent,omitempty" bson:"isCurrent,omitempty"`
}

// User is the identity and profile aggregate. Password and RefreshToken never
// serialize to JSON.
type User struct {
	ID           string       `json:"_id" bson:"_id"`
	Username     string       `json:"username" bson:"username"`
	Profession   string       `json:"profession,omitempty" bson:"profession,omitempty"`
	Email        string       `json:"email" bson:"email"`
	Mobile       string       `json:"mobile" bson:"mobile"`
	AltMobile    string       `json:"altMobile,omitempty" bson:"altMobile,omitempty"`
	FullName     string       `json:"fullName" bson:"fullName"`
	Avatar       string       `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CoverImage   string       `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	Education    []Education  `json:"education,omitempty" bson:"education,omitempty"`
	Experience   []Experience `json:"experience,omitempty" bson:"experience,omitempty"`
	SoftSkills   []string     `json:"softSkills,omitempty" bson:"softSkills,omitempty"`
	Language     []string     `json:"language,omitempty" bson:"language,omitempty"`
	Intrests     []string     `json:"intrests,omitempty" bson:"intrests,omitempty"`
	Social       []SocialLink `json:"social,omitempty" bson:"social,omitempty"`
	Skills       []RatedSkill `json:"skills,omitempty" bson:"skills,omitempty"`
	Address      string       `json:"address,omitempty" bson:"address,omitempty"`
	Description  string       `json:"description,omitempty" bson:"description,omitempty"`
	Password     string       `json:"-" bson:"password"`
	RefreshToken string       `json:"-" bson:"refreshToken,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// Sanitized returns a copy with credential material cleared. Every user
// payload handed outside the service layer goes through this.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clean := *u
	clean.Password = ""
	clean.RefreshToken = ""
	return &clean
}

// OwnerSummary is the slice of a user attached to project reads.
type OwnerSummary struct {
	ID         string `json:"_id" bson:"_id"`
	Username   string `json:"username" bson:"username"`
	Profession string `json:"profession,omitempty" bson:"profession,omitempty"`
	Mobile     string `json:"mobile" bson:"mobile"`
	FullName   string `json:"fullName" bson:"fullName"`
	Avatar     string `json:"avatar,omitempty" bson:"avatar,omitempty"`
}

// Summary projects the user down to the owner fields.
func (u *User) Summary() OwnerSummary {
	return OwnerSummary{
		ID:         u.ID,
		Username:   u.Username,
		Profession: u.Profession,
		Mobile:     u.Mobile,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
	}
}

// ProfileUpdate is the mutable profile field set applied as a full
// replacement by the account update operation.
type ProfileUpdate struct {
	FullName    string       `json:"fullName"`
	Email       string       `json:"email"`
	Mobile      string       `json:"mobile"`
	Username    string       `json:"username"`
	Profession  string       `json:"profession"`
	AltMobile   string       `json:"altMobile"`
	SoftSkills  []string     `json:"softSkills"`
	Language    []string     `json:"language"`
	Intrests    []string     `json:"intrests"`
	Social      []SocialLink `json:"social"`
	Skills      []RatedSkill `json:"skills"`
	Address     string       `json:"address"`
	Description string       `json:"description"`
}
