package pdf_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lachilena/empanaderia-api/internal/domain/entity"
	"github.com/lachilena/empanaderia-api/internal/infrastructure/pdf"
)

func sampleOrder() *entity.Order {
	return &entity.Order{
		ID:            "9b7e7ae4-0000-0000-0000-000000000001",
		CustomerEmail: "ana@lachilena.cl",
		Items: []entity.OrderItem{
			{ProductID: 1, Name: "Empanada de Pino", Price: 2500, Quantity: 2},
			{ProductID: 5, Name: "Bebida 500ml", Price: 1500, Quantity: 1},
		},
		Total:     6500,
		Status:    entity.StatusRecibido,
		CreatedAt: time.Date(2025, 9, 18, 13, 30, 0, 0, time.UTC),
	}
}

func TestGenerate_ProduceUnPDF(t *testing.T) {
	gen := pdf.NewMarotoReceiptGenerator("Empanadería La Chilena")

	out, err := gen.Generate(sampleOrder())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	// Todo PDF válido comienza con la firma %PDF.
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerate_PedidoSinItems(t *testing.T) {
	gen := pdf.NewMarotoReceiptGenerator("")
	order := sampleOrder()
	order.Items = nil
	order.Total = 0

	out, err := gen.Generate(order)
	require.NoError(t, err, "una boleta sin ítems no debe fallar")
	assert.NotEmpty(t, out)
}
