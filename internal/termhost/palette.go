// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package termhost

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// palette assigns evenly spaced hues to series keys in order of first
// appearance.
type palette struct {
	keys   map[string]int
	colors []string
}

func newPalette(keys []string) *palette {
	p := &palette{keys: map[string]int{}}
	for _, k := range keys {
		if _, ok := p.keys[k]; !ok {
			p.keys[k] = len(p.keys)
		}
	}
	n := max(len(p.keys), 1)
	p.colors = make([]string, n)
	for i := range p.colors {
		hue := float64(i) * 360 / float64(n)
		p.colors[i] = colorful.Hcl(hue, 0.55, 0.7).Clamped().Hex()
	}
	return p
}

func (p *palette) index(key string) int {
	if i, ok := p.keys[key]; ok {
		return i
	}
	return 0
}

func (p *palette) color(key string) string {
	return p.colors[p.index(key)]
}
