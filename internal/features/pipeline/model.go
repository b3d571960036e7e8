package pipeline

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stage is one ordered phase of a sales pipeline. Funnel widgets bucket
// open deals by stage id in the pipeline's declared order.
type Stage struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`
	Order int    `json:"order" bson:"order"`
}

type Pipeline struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Stages    []Stage            `json:"stages" bson:"stages"`
	IsDefault bool               `json:"is_default" bson:"is_default"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
