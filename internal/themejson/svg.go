package themejson

import (
	"fmt"
	"strconv"
	"strings"
)

// SVGFilters renders the duotone filter definitions declared under
// settings.color.duotone into a single inline SVG document. Returns the
// empty string when no presets declare usable colors.
func SVGFilters(tree Tree) string {
	duotone, ok := GetList(tree, []string{"settings", "color", "duotone"})
	if !ok || len(duotone) == 0 {
		return ""
	}

	var filters []string
	for _, item := range duotone {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		slug, _ := m["slug"].(string)
		colors, _ := m["colors"].([]interface{})
		if slug == "" || len(colors) < 2 {
			continue
		}
		if f := duotoneFilter(slug, colors); f != "" {
			filters = append(filters, f)
		}
	}

	if len(filters) == 0 {
		return ""
	}
	return `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 0 0" width="0" height="0" focusable="false" role="none" style="visibility: hidden; position: absolute; left: -9999px; overflow: hidden;"><defs>` +
		strings.Join(filters, "") + `</defs></svg>`
}

// duotoneFilter builds one filter element: the source is collapsed to
// luminance, then each channel is re-mapped across the preset colors.
func duotoneFilter(slug string, colors []interface{}) string {
	var r, g, b []string
	for _, c := range colors {
		hex, ok := c.(string)
		if !ok {
			return ""
		}
		cr, cg, cb, ok := parseHexColor(hex)
		if !ok {
			return ""
		}
		r = append(r, formatChannel(cr))
		g = append(g, formatChannel(cg))
		b = append(b, formatChannel(cb))
	}

	return fmt.Sprintf(
		`<filter id="bp-duotone-%s"><feColorMatrix color-interpolation-filters="sRGB" type="matrix" values=".299 .587 .114 0 0 .299 .587 .114 0 0 .299 .587 .114 0 0 .299 .587 .114 0 0"/><feComponentTransfer color-interpolation-filters="sRGB"><feFuncR type="table" tableValues="%s"/><feFuncG type="table" tableValues="%s"/><feFuncB type="table" tableValues="%s"/></feComponentTransfer><feComposite in2="SourceGraphic" operator="in"/></filter>`,
		slug,
		strings.Join(r, " "),
		strings.Join(g, " "),
		strings.Join(b, " "),
	)
}

// DuotoneFilterID returns the id attribute generated for a duotone preset
// slug, matching the filters emitted by SVGFilters.
func DuotoneFilterID(slug string) string {
	return "bp-duotone-" + slug
}

// parseHexColor parses #rgb and #rrggbb colors into 0..1 channel values.
func parseHexColor(s string) (r, g, b float64, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	r = float64(v>>16&0xff) / 255
	g = float64(v>>8&0xff) / 255
	b = float64(v&0xff) / 255
	return r, g, b, true
}

func formatChannel(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
