/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package multi

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	endorserErr := fmt.Errorf("peer0 unavailable")
	var errs Errors

	assert.Equal(t, "", errs.Error())

	errs = append(errs, endorserErr)
	assert.Equal(t, endorserErr.Error(), errs.Error())

	errs = append(errs, fmt.Errorf("peer1 unavailable"))
	assert.Equal(t, "Multiple errors occurred: - peer0 unavailable - peer1 unavailable", errs.Error())
}

func TestNew(t *testing.T) {
	err1 := fmt.Errorf("one")

	assert.Nil(t, New())
	assert.Nil(t, New(nil, nil))
	assert.Equal(t, err1, New(nil, err1))
	assert.Equal(t, Errors{err1, err1}, New(err1, nil, err1))
}

func TestAppend(t *testing.T) {
	err1 := fmt.Errorf("one")
	err2 := fmt.Errorf("two")

	assert.Nil(t, Append(nil, nil))
	assert.Equal(t, err1, Append(nil, err1))
	assert.Equal(t, Errors{err1}, Append(Errors{err1}, nil))

	m, ok := Append(err1, err2).(Errors)
	assert.True(t, ok)
	assert.Equal(t, Errors{err1, err2}, m)

	m, ok = Append(Errors{err1}, err2).(Errors)
	assert.True(t, ok)
	assert.Equal(t, Errors{err1, err2}, m)
}

func TestToError(t *testing.T) {
	err1 := fmt.Errorf("one")
	var errs Errors

	assert.Nil(t, errs.ToError())

	errs = append(errs, err1)
	assert.Equal(t, err1, errs.ToError())

	errs = append(errs, err1)
	assert.Equal(t, errs, errs.ToError())
}
