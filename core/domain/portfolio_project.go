package domain

import (
	"time"
)

// ProjectStatus is the closed status set. Any member is assignable at create
// or update time; there is no transition graph.
type ProjectStatus string

const (
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectOnHold     ProjectStatus = "On Hold"
)

// Valid reports membership in the status set.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectCompleted, ProjectInProgress, ProjectOnHold:
		return true
	}
	return false
}

// Project is a work item owned by a user. Owner is immutable after creation;
// there is no transfer operation. Description is an ordered list of rich
// content blocks kept opaque to the backend.
type Project struct {
	ID          string        `json:"_id" bson:"_id"`
	Title       string        `json:"title" bson:"title"`
	CoverImage  string        `json:"coverImage" bson:"coverImage"`
	Status      ProjectStatus `json:"status" bson:"status"`
	Domain      string        `json:"domain" bson:"domain"`
	ShortDesc   string        `json:"shortDesc,omitempty" bson:"shortDesc,omitempty"`
	StartOn     Date          `json:"startOn" bson:"startOn"`
	CompletedOn *Date         `json:"completedOn,omitempty" bson:"completedOn,omitempty"`
	Description []any         `json:"description,omitempty" bson:"description,omitempty"`
	OwnerID     string        `json:"ownerId" bson:"owner"`
	Owner       *OwnerSummary `json:"owner,omitempty" bson:"-"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// ProjectUpdate is the field set applied as a full replacement by the project
// update operation.
type ProjectUpdate struct {
	Title       string        `json:"title"`
	CoverImage  string        `json:"coverImage"`
	Status      ProjectStatus `json:"status"`
	Domain      string        `json:"domain"`
	ShortDesc   string        `json:"shortDesc"`
	StartOn     Date          `json:"startOn"`
	CompletedOn *Date         `json:"completedOn"`
	Description []any         `json:"description"`
}
