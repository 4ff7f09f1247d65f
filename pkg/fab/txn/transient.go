/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txn

import (
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// TransformTransientMap converts caller-supplied transient data into the byte
// map carried by a proposal. Byte slices are kept as is, strings and scalars
// are converted to their string form. Empty keys and nil values are rejected.
func TransformTransientMap(transient map[string]interface{}) (map[string][]byte, error) {
	if len(transient) == 0 {
		return nil, nil
	}

	result := make(map[string][]byte, len(transient))
	for k, v := range transient {
		if k == "" {
			return nil, errors.New("transient map key must not be empty")
		}
		switch value := v.(type) {
		case nil:
			return nil, errors.Errorf("transient map value for key [%s] is nil", k)
		case []byte:
			result[k] = value
		default:
			s, err := cast.ToStringE(value)
			if err != nil {
				return nil, errors.Wrapf(err, "transient map value for key [%s] is not convertible", k)
			}
			result[k] = []byte(s)
		}
	}
	return result, nil
}
