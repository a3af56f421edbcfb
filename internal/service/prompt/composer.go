// Package prompt builds the system prompt sent to the completion model.
package prompt

import (
	"strconv"
	"strings"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
)

const (
	adviceInstructions  = "Dựa vào thông tin các sản phẩm tìm thấy sau đây để trả lời câu hỏi của khách hàng. Hãy tư vấn một cách tự nhiên."
	productHeader       = "Thông tin sản phẩm:"
	noMatchInstructions = "Không tìm thấy sản phẩm nào phù hợp với từ khóa của khách hàng. " +
		"Hãy trả lời một cách lịch sự rằng bạn không tìm thấy và gợi ý họ tìm kiếm với từ khóa khác " +
		"hoặc hỏi về công dụng chung của các loại ly."
)

// BuildContext turns the catalog matches into one summary line each, in input order.
func BuildContext(baseRole string, matches []domain.ProductMatch) domain.PromptContext {
	summaries := make([]string, 0, len(matches))
	for _, m := range matches {
		summaries = append(summaries, Summary(m))
	}
	return domain.PromptContext{
		BaseInstructions: strings.TrimSpace(baseRole),
		ProductSummaries: summaries,
	}
}

// Summary renders a match as "- <name> (Giá: <price>đ)".
func Summary(m domain.ProductMatch) string {
	return "- " + m.Name + " (Giá: " + FormatPrice(m.Price) + "đ)"
}

// FormatPrice prints a price in its shortest decimal form: 100000, 99.5.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// Compose returns the system prompt for one chat turn. It is a pure function of its inputs.
func Compose(baseRole string, matches []domain.ProductMatch) string {
	return Render(BuildContext(baseRole, matches))
}

// Render joins a prompt context into the final system prompt.
func Render(pc domain.PromptContext) string {
	var b strings.Builder
	b.WriteString(pc.BaseInstructions)
	b.WriteString("\n\n")

	if len(pc.ProductSummaries) == 0 {
		b.WriteString(noMatchInstructions)
		return b.String()
	}

	b.WriteString(adviceInstructions)
	b.WriteString("\n")
	b.WriteString(productHeader)
	b.WriteString("\n")
	b.WriteString(strings.Join(pc.ProductSummaries, "\n"))
	return b.String()
}
