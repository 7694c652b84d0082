// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dtakit/pkg/pointer"
)

func TestPointer(t *testing.T) {
	assert.Equal(t, 0, pointer.Val[int](nil))
	assert.Equal(t, 7, pointer.Val(pointer.To(7)))
	assert.Equal(t, "Unknown", pointer.Fallback(nil, "Unknown"))
	assert.Equal(t, "Name", pointer.Fallback(pointer.To("Name"), "Unknown"))

	assert.Nil(t, pointer.NonZero(0))
	assert.Equal(t, -96, *pointer.NonZero(-96))

	assert.True(t, pointer.Equal[int](nil, nil))
	assert.True(t, pointer.Equal(pointer.To(1), pointer.To(1)))
	assert.False(t, pointer.Equal(pointer.To(1), nil))
}
