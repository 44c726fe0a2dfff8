package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/puntoventa/backend/internal/domain"
)

// PromptBuilder produces deterministic instruction strings for the
// text-generation model. Each template restates the required output schema,
// enumerates strict formatting rules, and embeds the input verbatim inside a
// delimited section. Building never fails: arbitrary text in, one string out.
type PromptBuilder struct{}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const documentPromptTemplate = `Sos un asistente que extrae productos de documentos comerciales (listas de precios, facturas, inventarios).

Devolvé UNICAMENTE un array JSON donde cada elemento tiene estas claves:
- "nombre": nombre del producto (texto)
- "precioVenta": precio de venta (numero)
- "precioCosto": precio de costo (numero)
- "stock": cantidad en stock (numero)
- "codigoBarras": codigo de barras si aparece, sino null

Reglas estrictas:
1. Respondé SOLO con el array JSON, sin comentarios ni explicaciones.
2. No uses bloques de codigo ni markdown.
3. No agregues puntos suspensivos ni cortes el array.
4. Si un dato no aparece en el documento usá null.

--- INICIO DEL DOCUMENTO ---
%s
--- FIN DEL DOCUMENTO ---`

const voicePromptTemplate = `Sos un asistente de ventas. Un cliente dicta un pedido hablado y tenés que reconocer los productos pedidos dentro del catalogo del negocio.

Catalogo disponible (array JSON con id, nombre, precioVenta, precioCosto):
%s

Devolvé UNICAMENTE un array JSON donde cada elemento tiene estas claves:
- "id": el id EXACTO del producto del catalogo
- "nombre": el nombre EXACTO del producto del catalogo
- "cantidad": cantidad pedida (numero)
- "precioVenta": precioVenta del catalogo (numero)
- "precioCosto": precioCosto del catalogo (numero)

Reglas estrictas:
1. Usá SOLO productos que existen en el catalogo; nunca inventes productos.
2. Respondé SOLO con el array JSON, sin comentarios ni explicaciones.
3. No uses bloques de codigo ni markdown.
4. Si ningun producto del catalogo coincide devolvé [].

--- INICIO DEL PEDIDO ---
%s
--- FIN DEL PEDIDO ---`

// BuildDocumentPrompt builds the instruction string for document
// interpretation from the extracted plain text.
func (b *PromptBuilder) BuildDocumentPrompt(content string) string {
	return fmt.Sprintf(documentPromptTemplate, strings.TrimSpace(content))
}

// BuildVoicePrompt builds the instruction string for spoken-order
// interpretation from the transcript and the current product catalog.
func (b *PromptBuilder) BuildVoicePrompt(transcript string, catalog []domain.CatalogEntry) string {
	encoded, err := json.Marshal(catalog)
	if err != nil {
		// A slice of plain structs cannot fail to marshal; keep the
		// builder total anyway
		encoded = []byte("[]")
	}
	return fmt.Sprintf(voicePromptTemplate, string(encoded), strings.TrimSpace(transcript))
}
