package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type createRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=32,playername"`
	SmallBlind int    `json:"smallBlind" validate:"required,gt=0"`
	BigBlind   int    `json:"bigBlind" validate:"required,gtfield=SmallBlind"`
}

func TestValidate_Valid(t *testing.T) {
	req := createRequest{Name: "Alice", SmallBlind: 10, BigBlind: 20}
	assert.NoError(t, Validate(req))
}

func TestValidate_MissingName(t *testing.T) {
	req := createRequest{SmallBlind: 10, BigBlind: 20}
	err := Validate(req)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestValidate_BlindOrdering(t *testing.T) {
	req := createRequest{Name: "Alice", SmallBlind: 20, BigBlind: 10}
	err := Validate(req)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bigBlind")
}

func TestValidate_PlayerNameCharacters(t *testing.T) {
	valid := []string{"Alice", "agent_7", "Big Slick", "abc123"}
	for _, name := range valid {
		req := createRequest{Name: name, SmallBlind: 10, BigBlind: 20}
		assert.NoError(t, Validate(req), name)
	}

	invalid := []string{"  ", "a<script>", "name!", "semi;colon"}
	for _, name := range invalid {
		req := createRequest{Name: name, SmallBlind: 10, BigBlind: 20}
		assert.Error(t, Validate(req), name)
	}
}
