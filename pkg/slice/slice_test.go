// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/pkg/slice"
)

func TestMap(t *testing.T) {
	ids := []int64{1, 2, 3, 4}

	assert.Equal(t, []string{"1", "2", "3", "4"}, slice.Map(ids, func(id int64) string {
		return strconv.FormatInt(id, 10)
	}))
	assert.Nil(t, slice.Map[int64, string](nil, nil))
}

func TestOrEmpty(t *testing.T) {
	assert.NotNil(t, slice.OrEmpty[int64](nil))
	assert.Equal(t, []int64{3, 1}, slice.OrEmpty([]int64{3, 1}))
}
