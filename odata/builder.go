package odata

import (
	"fmt"
	"net/url"
	"strings"
)

// Query là input contract của URL builder. Filter là một biểu thức $filter
// OData nguyên văn: gateway chỉ URL-encode rồi truyền qua, không parse,
// không validate — SAP service phía sau là validator duy nhất.
// Top/Skip <= 0 nghĩa là bỏ qua tham số đó (giữ nguyên falsy-skip của
// contract hiện tại: top=0 không có nghĩa "zero rows").
type Query struct {
	Filter string
	Top    int
	Skip   int
}

// BuildURL dựng URL OData v2 từ base URL, service binding và query.
// Thứ tự tham số cố định để dễ test: $format, $top, $skip, $filter.
func BuildURL(base string, binding ServiceBinding, q Query) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	b.WriteByte('/')
	b.WriteString(binding.Service)
	b.WriteByte('/')
	b.WriteString(binding.EntitySet)
	b.WriteString("?$format=json")

	if q.Top > 0 {
		fmt.Fprintf(&b, "&$top=%d", q.Top)
	}
	if q.Skip > 0 {
		fmt.Fprintf(&b, "&$skip=%d", q.Skip)
	}
	if q.Filter != "" {
		b.WriteString("&$filter=")
		b.WriteString(encodeFilter(q.Filter))
	}

	return b.String()
}

// encodeFilter URL-encodes a $filter expression. QueryEscape encodes spaces
// as '+', which SAP gateways reject inside $filter, so rewrite them to %20.
func encodeFilter(filter string) string {
	return strings.ReplaceAll(url.QueryEscape(filter), "+", "%20")
}
