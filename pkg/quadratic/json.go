// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package quadratic

import (
	"encoding/json"
	"math"
	"strconv"
)

// MarshalJSON encodes the roots as a JSON array. An empty or nil Roots
// encodes as []. Non-finite roots, which only occur when the discriminant
// overflows, are encoded as the strings "+Inf", "-Inf" and "NaN".
func (r Roots) MarshalJSON() ([]byte, error) {
	out := make([]any, len(r))
	for i, x := range r {
		out[i] = JSONFloat(x)
	}
	return json.Marshal(out)
}

// JSONFloat returns x unchanged when it is finite and its strconv spelling
// otherwise, so the result can always be passed to encoding/json.
func JSONFloat(x float64) any {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return x
}
