// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dtakit/pkg/uuid"
)

func TestNew(t *testing.T) {
	before := time.Now().UnixMilli()
	id := uuid.New()

	assert.True(t, uuid.Valid(id))
	millis, ok := uuid.Time(id)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, millis, before)

	assert.NotEqual(t, id, uuid.New())
}

func TestValid(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"01890a5d-ac96-774b-bcce-b302099a8057", true},
		{"not-a-uuid", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, uuid.Valid(tt.value))
		})
	}

	_, ok := uuid.Time("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.False(t, ok)
}
