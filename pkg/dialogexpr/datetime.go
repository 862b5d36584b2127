package dialogexpr

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// DefaultDateTimeFormat is the format used when a date function is given
// none. Timestamps rendered with it are in UTC.
const DefaultDateTimeFormat = "yyyy-MM-ddTHH:mm:ss.fffZ"

// nowFunc is the clock behind utcNow.
var nowFunc = time.Now

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp reads an ISO 8601 timestamp. Values without a zone are
// taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s is not a valid timestamp", s)
}

// toTime accepts a time.Time or a timestamp string.
func toTime(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		return ParseTimestamp(val)
	default:
		return time.Time{}, fmt.Errorf("%s is not a timestamp", formatConstant(v))
	}
}

// ReturnFormattedTimestamp renders t with a .NET style custom format string,
// localising month and day names for locale. An empty format renders t in
// UTC with DefaultDateTimeFormat.
//
// Supported tokens: yyyy yy y, MMMM MMM MM M, dddd ddd dd d, HH H hh h, mm m,
// ss s, f through fffffff (and F), tt t, K, zzz zz z. Quoted text and
// backslash-escaped characters are copied literally.
func ReturnFormattedTimestamp(t time.Time, format, locale string) string {
	if format == "" {
		format = DefaultDateTimeFormat
		t = t.UTC()
	}
	loc := mondayLocale(locale)

	var b strings.Builder
	for i := 0; i < len(format); {
		c := format[i]
		switch c {
		case '\'', '"':
			end := strings.IndexByte(format[i+1:], c)
			if end < 0 {
				b.WriteString(format[i+1:])
				return b.String()
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		case '\\':
			if i+1 < len(format) {
				b.WriteByte(format[i+1])
			}
			i += 2
			continue
		}

		n := 1
		for i+n < len(format) && format[i+n] == c {
			n++
		}
		if !writeDateToken(&b, t, c, n, loc) {
			b.WriteString(format[i : i+n])
		}
		i += n
	}
	return b.String()
}

// writeDateToken writes the run of n copies of c. It returns false for
// characters that are not format tokens.
func writeDateToken(b *strings.Builder, t time.Time, c byte, n int, loc monday.Locale) bool {
	pad := func(v, width int) {
		s := strconv.Itoa(v)
		for i := len(s); i < width; i++ {
			b.WriteByte('0')
		}
		b.WriteString(s)
	}

	switch c {
	case 'y':
		switch {
		case n == 1:
			b.WriteString(strconv.Itoa(t.Year() % 100))
		case n == 2:
			pad(t.Year()%100, 2)
		default:
			pad(t.Year(), n)
		}
	case 'M':
		switch n {
		case 1:
			b.WriteString(strconv.Itoa(int(t.Month())))
		case 2:
			pad(int(t.Month()), 2)
		case 3:
			b.WriteString(monday.Format(t, "Jan", loc))
		default:
			b.WriteString(monday.Format(t, "January", loc))
		}
	case 'd':
		switch n {
		case 1:
			b.WriteString(strconv.Itoa(t.Day()))
		case 2:
			pad(t.Day(), 2)
		case 3:
			b.WriteString(monday.Format(t, "Mon", loc))
		default:
			b.WriteString(monday.Format(t, "Monday", loc))
		}
	case 'H':
		pad(t.Hour(), min(n, 2))
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		pad(h, min(n, 2))
	case 'm':
		pad(t.Minute(), min(n, 2))
	case 's':
		pad(t.Second(), min(n, 2))
	case 'f', 'F':
		digits := min(n, 7)
		frac := fmt.Sprintf("%09d", t.Nanosecond())[:digits]
		if c == 'F' {
			frac = strings.TrimRight(frac, "0")
		}
		b.WriteString(frac)
	case 't':
		ampm := "AM"
		if t.Hour() >= 12 {
			ampm = "PM"
		}
		b.WriteString(ampm[:min(n, 2)])
	case 'K':
		if _, offset := t.Zone(); offset == 0 && t.Location() == time.UTC {
			b.WriteString("Z")
		} else {
			b.WriteString(t.Format("-07:00"))
		}
	case 'z':
		switch n {
		case 1:
			_, offset := t.Zone()
			hours := offset / 3600
			if offset < 0 {
				b.WriteString("-")
				hours = -hours
			} else {
				b.WriteString("+")
			}
			b.WriteString(strconv.Itoa(hours))
		case 2:
			b.WriteString(t.Format("-07"))
		default:
			b.WriteString(t.Format("-07:00"))
		}
	default:
		return false
	}
	return true
}

var mondayLocales = map[string]monday.Locale{
	"en":    monday.LocaleEnUS,
	"en_us": monday.LocaleEnUS,
	"en_gb": monday.LocaleEnGB,
	"de":    monday.LocaleDeDE,
	"de_de": monday.LocaleDeDE,
	"fr":    monday.LocaleFrFR,
	"fr_fr": monday.LocaleFrFR,
	"fr_ca": monday.LocaleFrCA,
	"es":    monday.LocaleEsES,
	"es_es": monday.LocaleEsES,
	"it":    monday.LocaleItIT,
	"it_it": monday.LocaleItIT,
	"pt":    monday.LocalePtPT,
	"pt_pt": monday.LocalePtPT,
	"pt_br": monday.LocalePtBR,
	"nl":    monday.LocaleNlNL,
	"nl_nl": monday.LocaleNlNL,
	"nl_be": monday.LocaleNlBE,
	"ru":    monday.LocaleRuRU,
	"ru_ru": monday.LocaleRuRU,
	"pl":    monday.LocalePlPL,
	"sv":    monday.LocaleSvSE,
	"da":    monday.LocaleDaDK,
	"fi":    monday.LocaleFiFI,
	"nb":    monday.LocaleNbNO,
	"ja":    monday.LocaleJaJP,
	"ja_jp": monday.LocaleJaJP,
	"zh":    monday.LocaleZhCN,
	"zh_cn": monday.LocaleZhCN,
	"zh_tw": monday.LocaleZhTW,
	"ko":    monday.LocaleKoKR,
	"tr":    monday.LocaleTrTR,
	"uk":    monday.LocaleUkUA,
}

// mondayLocale maps a BCP 47 tag such as "fr-FR" to a monday locale, trying
// the full tag and then its language. Unknown tags use en_US.
func mondayLocale(locale string) monday.Locale {
	key := strings.ToLower(strings.ReplaceAll(locale, "-", "_"))
	if loc, ok := mondayLocales[key]; ok {
		return loc
	}
	if base, _, found := strings.Cut(key, "_"); found {
		if loc, ok := mondayLocales[base]; ok {
			return loc
		}
	}
	return monday.LocaleEnUS
}
