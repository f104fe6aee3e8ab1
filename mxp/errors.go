// Copyright 2025 go-mxp Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mxp

import "errors"

// ErrExhausted is returned when the scratchpad cannot hold a reservation.
// Callers may retry with a smaller working set; the capacity does not change
// while a device is in use.
var ErrExhausted = errors.New("mxp: scratchpad exhausted")
