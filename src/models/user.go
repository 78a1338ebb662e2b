package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role of the requester, carried in the JWT role claim. ADMIN is the only
// unrestricted role: exports bypass encoding and anonymization entirely.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleInvestigador Role = "INVESTIGADOR"
	RoleAnalista     Role = "ANALISTA"
	RoleUser         Role = "USER"
)

// User is the slice of the account record the core needs: identity for
// authorship plus the role driving the export gate. Account management and
// authentication live outside this service.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username string             `bson:"username" json:"username"`
	Role     Role               `bson:"role" json:"role"`
}
