// Copyright 2025 megablocks-go Authors
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

// Package contrib groups the data-movement packages built on hwy.
//
// # Subpackages
//
//   - permute: padded gather/scatter of matrix rows by bin (expert routing)
//   - workerpool: persistent worker pool used for row-parallel dispatch
//
// # Permutation (hwy/contrib/permute)
//
//	import "github.com/ajroetker/megablocks-go/hwy/contrib/permute"
//
//	padded, err := permute.Gather(tokens, md)  // token order -> expert order
//	out, err := permute.Scatter(padded, md)    // expert order -> token order
package contrib
