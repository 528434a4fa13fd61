package notify

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// markdownV2Replacer escapa los caracteres reservados de MarkdownV2 de Telegram.
// La barra invertida va primero para no duplicar los escapes agregados.
var markdownV2Replacer = strings.NewReplacer(
	`\`, `\\`,
	"_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
	"~", `\~`, "`", "\\`", ">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`,
	"=", `\=`, "|", `\|`, "{", `\{`, "}", `\}`, ".", `\.`, "!", `\!`,
)

// EscapeMarkdownV2 devuelve s apto para un mensaje con parse_mode MarkdownV2.
func EscapeMarkdownV2(s string) string {
	return markdownV2Replacer.Replace(s)
}

// printer formatea cantidades con separador de miles (1.250).
var printer = message.NewPrinter(language.BrazilianPortuguese)

func formatQuantity(n int) string {
	return printer.Sprintf("%d", n)
}

// ExpiringLotsMarkdown arma el aviso de lotes por vencer en MarkdownV2.
func ExpiringLotsMarkdown(lots []*entity.ExpiringLot, days int) string {
	var b strings.Builder
	b.WriteString("*⚠️ Aviso: Lotes vencendo em ")
	b.WriteString(EscapeMarkdownV2(printer.Sprintf("%d", days)))
	b.WriteString(" dias:*\n\n")
	for _, l := range lots {
		field(&b, "Produto", l.ProductName)
		field(&b, "Marca", l.ProductBrand)
		field(&b, "ID Estoque", l.StockID)
		field(&b, "Nome Estoque", l.StockName)
		field(&b, "Quantidade", formatQuantity(l.Quantity))
		field(&b, "Lote do fabricante", l.BatchCode)
		b.WriteString("Validade: `")
		b.WriteString(EscapeMarkdownV2(l.ExpiryDate.Format("2006-01-02")))
		b.WriteString("`\n\n")
	}
	return b.String()
}

func field(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(": *")
	b.WriteString(EscapeMarkdownV2(value))
	b.WriteString("*\n")
}

// ExpiringLotsText versión en texto plano para correo.
func ExpiringLotsText(lots []*entity.ExpiringLot, days int) string {
	var b strings.Builder
	b.WriteString(printer.Sprintf("Aviso: Lotes vencendo em %d dias\n\n", days))
	for _, l := range lots {
		b.WriteString("Produto: " + l.ProductName + "\n")
		b.WriteString("Marca: " + l.ProductBrand + "\n")
		b.WriteString("ID Estoque: " + l.StockID + "\n")
		b.WriteString("Nome Estoque: " + l.StockName + "\n")
		b.WriteString("Quantidade: " + formatQuantity(l.Quantity) + "\n")
		b.WriteString("Lote do fabricante: " + l.BatchCode + "\n")
		b.WriteString("Validade: " + l.ExpiryDate.Format("02/01/2006") + "\n\n")
	}
	return b.String()
}
