package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 123456000, time.UTC)
	assert.Equal(t, "2024-03-09T14:05:07.123456+00:00", FormatTimestamp(ts))

	eastern := time.FixedZone("", -5*60*60)
	assert.Equal(t, "2024-03-09T09:05:07-05:00", FormatTimestamp(time.Date(2024, 3, 9, 9, 5, 7, 0, eastern)))
}

func TestSymptomToResponse(t *testing.T) {
	s := Symptom{
		ID:       7,
		UserID:   3,
		Datetime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Symptoms: datatypes.JSON(`[1,2,3]`),
	}

	body, err := json.Marshal(s.ToResponse())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"user_id":3,"datetime":"2024-01-01T00:00:00+00:00","symptoms":[1,2,3]}`, string(body))
}

func TestUserBasicHidesPassword(t *testing.T) {
	u := User{ID: 1, Username: "alice", PasswordHash: "hash", Email: "a@b.com", Tokens: 4}

	body, err := json.Marshal(u.Basic())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"username":"alice","email":"a@b.com","tokens":4}`, string(body))

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
}
