package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want ID
	}{
		{
			name: "numeric id",
			json: `7`,
			want: ID("7"),
		},
		{
			name: "numeric string id",
			json: `"7"`,
			want: ID("7"),
		},
		{
			name: "uuid string id",
			json: `"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`,
			want: ID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		},
		{
			name: "large number",
			json: `1234567890`,
			want: ID("1234567890"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.json), &id))
			assert.Equal(t, tt.want, id)
		})
	}

	t.Run("invalid token", func(t *testing.T) {
		var id ID
		assert.Error(t, json.Unmarshal([]byte(`{"nested":1}`), &id))
	})
}

func TestID_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		want string
	}{
		{
			name: "numeric id keeps numeric form",
			id:   ID("7"),
			want: `7`,
		},
		{
			name: "numeric id with leading zero normalizes",
			id:   ID("07"),
			want: `7`,
		},
		{
			name: "uuid id keeps string form",
			id:   ID("a1b2-c3"),
			want: `"a1b2-c3"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestSameID(t *testing.T) {
	tests := []struct {
		name string
		a    ID
		b    ID
		want bool
	}{
		{
			name: "number vs numeric string",
			a:    NumericID(7),
			b:    ID("7"),
			want: true,
		},
		{
			name: "leading zeros",
			a:    ID("007"),
			b:    ID("7"),
			want: true,
		},
		{
			name: "different numbers",
			a:    NumericID(7),
			b:    NumericID(17),
			want: false,
		},
		{
			name: "uuid equality",
			a:    ID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
			b:    ID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
			want: true,
		},
		{
			name: "uuid vs number",
			a:    ID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
			b:    NumericID(7),
			want: false,
		},
		{
			name: "empty ids are equal",
			a:    ID(""),
			b:    ID(""),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameID(tt.a, tt.b))
		})
	}
}

func TestContainsID(t *testing.T) {
	ids := []ID{NumericID(1), ID("2"), ID("a1b2")}

	assert.True(t, ContainsID(ids, ID("1")))
	assert.True(t, ContainsID(ids, NumericID(2)))
	assert.True(t, ContainsID(ids, ID("a1b2")))
	assert.False(t, ContainsID(ids, NumericID(3)))
	assert.False(t, ContainsID(nil, NumericID(1)))
}

func TestCourse_RoundTripMixedIDs(t *testing.T) {
	raw := `{"id": 3, "name": "Go", "start_date": "2024-04-01", "end_date": "2024-05-01",
		"creator_id": "10", "instructors": [10, "11", 12]}`

	var course Course
	require.NoError(t, json.Unmarshal([]byte(raw), &course))

	assert.True(t, SameID(course.ID, NumericID(3)))
	assert.True(t, SameID(course.CreatorID, NumericID(10)))
	assert.True(t, ContainsID(course.Instructors, ID("11")))
	assert.True(t, ContainsID(course.Instructors, NumericID(12)))
}
