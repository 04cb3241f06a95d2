package builtins

import (
	"fmt"
	"strings"

	"github.com/viur-framework/logics/types"
)

// builtinHTMLInsertImage implements
// `htmlInsertImage(info, size=None, fallback=None, flip=None)`, a
// Template-only generator function. It emits a self-closing `<img>` tag
// from either a dict carrying ViUR's `servingurl`/`dlkey` keys or a
// plain URL string. Grounded on
// `original_source/logics/vistache.py`'s `htmlInsertImage`.
func builtinHTMLInsertImage(args []types.Value) (types.Value, error) {
	if len(args) < 1 || len(args) > 4 {
		return types.None, errArity("htmlInsertImage")
	}
	info := args[0]
	size := int64(0)
	if len(args) >= 2 && args[1].Kind() != types.KindNone {
		size = types.ParseInt(args[1].String(), 0)
	}
	var fallback types.Value
	if len(args) >= 3 {
		fallback = args[2]
	}
	flip := len(args) >= 4 && args[3].Truthy()

	if !info.Truthy() {
		info = fallback
	}
	if !info.Truthy() {
		return types.NewStr(""), nil
	}

	attrOrder := []string{"style", "title", "src", "width"}
	attrs := map[string]string{}

	if flip {
		attrs["style"] = "transform: scaleX(-1);"
	}

	isServingURL := false
	var img string

	if info.Kind() == types.KindDict {
		dlkey, hasDlkey := info.Dict().Get(types.NewStr("dlkey"))
		serving, hasServing := info.Dict().Get(types.NewStr("servingurl"))
		if hasDlkey && hasServing {
			img = serving.String()

			title, hasTitle := info.Dict().Get(types.NewStr("title"))
			if !hasTitle || !title.Truthy() {
				title, hasTitle = info.Dict().Get(types.NewStr("name"))
			}
			if hasTitle && title.Truthy() {
				attrs["title"] = title.String()
			}

			if img == "" {
				img = "/file/download/" + dlkey.String()
			} else if !strings.HasPrefix(img, "/_ah/img/") {
				isServingURL = true
				img += fmt.Sprintf("=s%d", size)
			}
		}
	} else {
		img = info.String()
	}

	if img == "" {
		return types.NewStr(""), nil
	}

	attrs["src"] = img
	if !isServingURL && size > 0 {
		attrs["width"] = fmt.Sprintf("%d", size)
	}

	var parts []string
	for _, k := range attrOrder {
		if v, ok := attrs[k]; ok {
			parts = append(parts, fmt.Sprintf(`%s="%s"`, k, v))
		}
	}
	return types.NewStr("<img " + strings.Join(parts, " ") + ">"), nil
}
