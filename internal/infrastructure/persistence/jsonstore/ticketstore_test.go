package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sismaterial/helpdesk/internal/domain/shared"
	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

func newTicket(t *testing.T, title string) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(
		title, "Descrição", vo.CategorySystem, vo.PriorityHigh,
		"Ana", "ana@x.com", []string{"print.png"},
		time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return tk
}

func TestTicketStore_CreateAssignsSequentialNumbers(t *testing.T) {
	store := NewTicketStore(filepath.Join(t.TempDir(), "chamados.json"), logger.Nop())
	ctx := context.Background()

	first := newTicket(t, "Erro <no> login")
	require.NoError(t, store.Create(ctx, first))
	assert.Equal(t, "0001", first.Number())

	second := newTicket(t, "Relatório")
	require.NoError(t, store.Create(ctx, second))
	assert.Equal(t, "0002", second.Number())

	got, err := store.GetByNumber(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Erro <no> login", got.Title())
	assert.Equal(t, vo.StatusOpen, got.Status())
	assert.Equal(t, []string{"print.png"}, got.Attachments())
	assert.True(t, first.CreatedAt().Equal(got.CreatedAt()))
}

func TestTicketStore_WritesLegacyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chamados.json")
	store := NewTicketStore(path, logger.Nop())

	require.NoError(t, store.Create(context.Background(), newTicket(t, "Erro <no> login")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"numero": "0001"`)
	assert.Contains(t, content, `"titulo": "Erro <no> login"`)
	assert.Contains(t, content, `"tipo": "Sistema em si"`)
	assert.Contains(t, content, `"prioridade": "Alta"`)
	assert.Contains(t, content, `"status": "Aberto"`)
	assert.Contains(t, content, "\n    {")
}

func TestTicketStore_LegacyRecordsWithoutNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chamados.json")
	legacy := `[
    {"usuario": "Ana", "email": "ana@x.com", "data": "2024-01-02 09:15", "titulo": "A", "tipo": "Sistema em si", "prioridade": "Baixa", "descricao": "d", "arquivos": []},
    {"usuario": "Bia", "email": "bia@x.com", "data": "2024-01-03 10:00:59", "titulo": "B", "tipo": "Dados do Sistema", "prioridade": "Média", "descricao": "d", "arquivos": []}
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))
	store := NewTicketStore(path, logger.Nop())
	ctx := context.Background()

	got, err := store.GetByNumber(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "B", got.Title())
	assert.Equal(t, vo.StatusOpen, got.Status())

	next := newTicket(t, "C")
	require.NoError(t, store.Create(ctx, next))
	assert.Equal(t, "0003", next.Number())
}

func TestTicketStore_SaveOfLoadedLegacyRecordOnlyAddsNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chamados.json")
	legacy := `[
    {"usuario": "Ana", "email": "ana@x.com", "data": "2024-03-05 14:30", "titulo": "Erro <no> login", "tipo": "Dados do Sistema", "prioridade": "Média", "descricao": "Não abre & trava", "arquivos": ["print.png"], "status": "Em Análise",
     "mensagens": [
        {"usuario": "Suporte", "data": "2024-03-06 09:00", "mensagem": "Pode reiniciar?"},
        {"usuario": "Ana", "data": "2024-03-05 15:00", "mensagem": "Segue o print"}
     ]}
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))
	store := NewTicketStore(path, logger.Nop())
	ctx := context.Background()

	got, err := store.GetByNumber(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NoError(t, store.Update(ctx, got))

	var before, after []map[string]any
	require.NoError(t, json.Unmarshal([]byte(legacy), &before))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &after))

	require.Len(t, after, 1)
	assert.Equal(t, "0001", after[0]["numero"])
	delete(after[0], "numero")
	assert.Equal(t, before, after)
}

func TestTicketStore_UpdatePersistsStatusAndMessages(t *testing.T) {
	store := NewTicketStore(filepath.Join(t.TempDir(), "chamados.json"), logger.Nop())
	ctx := context.Background()

	tk := newTicket(t, "A")
	require.NoError(t, store.Create(ctx, tk))

	_, err := tk.ChangeStatus(vo.StatusInAnalysis)
	require.NoError(t, err)
	older, err := ticket.NewMessage("Ana", "primeira", time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	newer, err := ticket.NewMessage("Suporte", "segunda", time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, tk.AddMessage(older))
	require.NoError(t, tk.AddMessage(newer))
	require.NoError(t, store.Update(ctx, tk))

	got, err := store.GetByNumber(ctx, tk.Seq())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInAnalysis, got.Status())
	require.Len(t, got.Messages(), 2)
	assert.Equal(t, "segunda", got.Messages()[0].Text())
	assert.Equal(t, "primeira", got.Messages()[1].Text())
}

func TestTicketStore_MissingFileIsEmpty(t *testing.T) {
	store := NewTicketStore(filepath.Join(t.TempDir(), "absent.json"), logger.Nop())

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := store.GetByNumber(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTicketStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chamados.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := NewTicketStore(path, logger.Nop())

	_, err := store.List(context.Background())
	assert.ErrorIs(t, err, shared.ErrCorruptStore)

	err = store.Create(context.Background(), newTicket(t, "A"))
	assert.ErrorIs(t, err, shared.ErrCorruptStore)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestTicketStore_UpdateUnknownTicket(t *testing.T) {
	store := NewTicketStore(filepath.Join(t.TempDir(), "chamados.json"), logger.Nop())
	tk, err := ticket.ReconstructTicket(9, "Ana", "ana@x.com", time.Now().UTC(), "A",
		vo.CategorySystem, vo.PriorityLow, "d", nil, vo.StatusOpen, nil)
	require.NoError(t, err)

	err = store.Update(context.Background(), tk)
	assert.Error(t, err)
}
