package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Patient record slice used by export anonymization. Patient CRUD belongs to
// a separate service; the encoder only needs the name and the participant
// code, e.g. "P-3f2a9c1b".
type Patient struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName       string             `bson:"firstName" json:"firstName"`
	LastName        string             `bson:"lastName" json:"lastName"`
	ParticipantCode *string            `bson:"participantCode,omitempty" json:"participantCode,omitempty"`
}
