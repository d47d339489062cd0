package domain

import "time"

// Profile is the application-level extension of a provider User, keyed 1:1 by
// UserID. At most one Profile exists per user; a user without a Profile has no
// application privileges.
type Profile struct {
	UserID       string    `json:"userId" bson:"user_id"`
	Role         Role      `json:"role" bson:"role"`
	DisplayName  *string   `json:"displayName" bson:"display_name"`
	Bio          *string   `json:"bio" bson:"bio"`
	ProfileImage *string   `json:"profileImage" bson:"profile_image"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}
