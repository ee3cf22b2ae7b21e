package utils

import (
	"strings"

	"github.com/google/uuid"
)

func NewID() string { return strings.ReplaceAll(uuid.NewString(), "-", "") }
