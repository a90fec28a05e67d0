package common

import (
	"github.com/google/uuid"
)

// NewSubjectID generates a unique subject ID with the "sub_" prefix
// Format: sub_<uuid>
func NewSubjectID() string {
	return "sub_" + uuid.New().String()
}

// NewChunkID generates a unique chunk ID with the "chk_" prefix
// Format: chk_<uuid>
func NewChunkID() string {
	return "chk_" + uuid.New().String()
}
