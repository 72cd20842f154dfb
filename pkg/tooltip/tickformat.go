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
package tooltip

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// DefaultTickFormat resolves the built-in format specs. Unknown specs fall
// back to the null-aware default formatter; specs containing '%' are used
// as fmt verbs.
func DefaultTickFormat(spec string, nullAlias string) Formatter {
	var f Formatter
	switch spec {
	case "":
		f = formatDefault
	case "x-num-auto":
		f = formatGroupedNumber
	case "percent":
		f = formatPercent
	case "si":
		f = formatSI
	case "bytes":
		f = formatBytes
	case "day":
		f = timeFormat("02-Jan-2006")
	case "day-short":
		f = timeFormat("02-Jan")
	case "week":
		f = timeFormat("02-Jan-2006")
	case "month":
		f = timeFormat("January")
	case "month-short":
		f = timeFormat("Jan")
	case "month-year":
		f = timeFormat("January, 2006")
	case "year":
		f = timeFormat("2006")
	case "quarter":
		f = formatQuarter
	default:
		if strings.Contains(spec, "%") {
			f = func(v any) string { return fmt.Sprintf(spec, v) }
		} else {
			f = formatDefault
		}
	}
	return nullAware(f, nullAlias)
}

func nullAware(f Formatter, nullAlias string) Formatter {
	return func(v any) string {
		if isNil(v) {
			return nullAlias
		}
		return f(v)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// toFloat converts any Go numeric kind to float64.
func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func isNumeric(v any) bool {
	_, ok := toFloat(v)
	return ok
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func formatDefault(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func formatGroupedNumber(v any) string {
	f, ok := toFloat(v)
	if !ok {
		return formatDefault(v)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return numberPrinter.Sprintf("%d", int64(f))
	}
	return numberPrinter.Sprintf("%.2f", f)
}

func formatPercent(v any) string {
	f, ok := toFloat(v)
	if !ok {
		return formatDefault(v)
	}
	return strconv.FormatFloat(math.Round(f*10000)/100, 'f', -1, 64) + "%"
}

func formatSI(v any) string {
	f, ok := toFloat(v)
	if !ok {
		return formatDefault(v)
	}
	return strings.TrimSpace(humanize.SIWithDigits(f, 2, ""))
}

func formatBytes(v any) string {
	f, ok := toFloat(v)
	if !ok || f < 0 {
		return formatDefault(v)
	}
	return humanize.Bytes(uint64(f))
}

func timeFormat(layout string) Formatter {
	return func(v any) string {
		t, ok := toTime(v)
		if !ok {
			return formatDefault(v)
		}
		return t.Format(layout)
	}
}

func formatQuarter(v any) string {
	t, ok := toTime(v)
	if !ok {
		return formatDefault(v)
	}
	return fmt.Sprintf("Q%d %d", (int(t.Month())-1)/3+1, t.Year())
}
