//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Scenarios:
//   full sale cycle     login → abrir caixa → venda → fechar com reconciliação
//   stock guard         venda acima do estoque é rejeitada sem efeitos
//   fiscal numbering    notas sequenciais por tipo via HTTP

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JanRocha/sencto-pdv/internal/config"
	"github.com/JanRocha/sencto-pdv/internal/infra"
	"github.com/JanRocha/sencto-pdv/internal/router"
	"github.com/JanRocha/sencto-pdv/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	rdb    *redis.Client
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("sencto_test"),
		tcPostgres.WithUsername("sencto"),
		tcPostgres.WithPassword("sencto"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
		DashboardCacheTTL:  30,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin + fiscal config
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`
		INSERT INTO colaboradores (nome_completo, cpf, email, password_hash, papel)
		VALUES ('Admin E2E', '00000000000', 'admin@e2e.test', ?, 'ADMINISTRADOR')
		ON CONFLICT DO NOTHING`, string(hash)).Error)
	require.NoError(t, db.Exec(`
		INSERT INTO config_fiscal (ambiente, serie, proximo_numero_nfe, proximo_numero_nfce)
		SELECT 'HOMOLOGACAO', 1, 1, 1
		WHERE NOT EXISTS (SELECT 1 FROM config_fiscal)`).Error)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"cpf": "00000000000", "password": "admin123"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, rdb: rdb, token: loginBody.AccessToken}
}

func createProduto(t *testing.T, env *testEnv, nome, barras string, preco float64, estoque int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/produtos",
		jsonBody(t, map[string]any{
			"nome":           nome,
			"codigo_barras":  barras,
			"nome_categoria": "Lanchonete",
			"preco_venda":    preco,
			"estoque":        estoque,
			"estoque_minimo": 1,
			"unidade":        "UN",
			"tipo":           "Alimento",
			"ncm":            "21069090",
			"cfop":           "5102",
			"cst_csosn":      "102",
			"ativo":          true,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullSaleCycle(t *testing.T) {
	env := setupTestEnv(t)

	prodID := createProduto(t, env, "Gaseosa 500ml", "7890001000001", 10, 20)

	caixaResp := do(t, env.server, "POST", "/v1/caixa/abrir",
		jsonBody(t, map[string]any{"valor_inicial": 100}), env.token)
	require.Equal(t, http.StatusCreated, caixaResp.StatusCode)
	var caixa struct {
		ID string `json:"id"`
	}
	decodeJSON(t, caixaResp, &caixa)
	require.NotEmpty(t, caixa.ID)

	vendaResp := do(t, env.server, "POST", "/v1/vendas",
		jsonBody(t, map[string]any{
			"itens": []map[string]any{
				{"produto_id": prodID, "quantidade": 3, "preco_unitario": 10},
			},
			"desconto":         5,
			"metodo_pagamento": "DINHEIRO",
		}), env.token)
	require.Equal(t, http.StatusCreated, vendaResp.StatusCode)
	var venda struct {
		ID       string `json:"id"`
		Subtotal string `json:"subtotal"`
		Total    string `json:"total"`
	}
	decodeJSON(t, vendaResp, &venda)
	assert.Equal(t, "30", venda.Subtotal)
	assert.Equal(t, "25", venda.Total)

	// Stock decremented
	prodResp := do(t, env.server, "GET", "/v1/produtos/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Estoque int `json:"estoque"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 17, prod.Estoque)

	// Close with exact count: 100 + 25 = 125 → no discrepancy
	fecharResp := do(t, env.server, "POST", "/v1/caixa/fechar",
		jsonBody(t, map[string]any{"valor_contado": 125}), env.token)
	require.Equal(t, http.StatusOK, fecharResp.StatusCode)
	var fechamento struct {
		Esperado  string `json:"esperado"`
		Contado   string `json:"contado"`
		Diferenca string `json:"diferenca"`
	}
	decodeJSON(t, fecharResp, &fechamento)
	assert.Equal(t, "125", fechamento.Esperado)
	assert.Equal(t, "0", fechamento.Diferenca)
}

func TestE2E_StockGuard(t *testing.T) {
	env := setupTestEnv(t)

	prodID := createProduto(t, env, "Agua Mineral", "7890001000002", 5, 2)

	caixaResp := do(t, env.server, "POST", "/v1/caixa/abrir",
		jsonBody(t, map[string]any{"valor_inicial": 50}), env.token)
	require.Equal(t, http.StatusCreated, caixaResp.StatusCode)

	// Asking for 3 with stock 2 fails and leaves no sale behind
	vendaResp := do(t, env.server, "POST", "/v1/vendas",
		jsonBody(t, map[string]any{
			"itens": []map[string]any{
				{"produto_id": prodID, "quantidade": 3, "preco_unitario": 5},
			},
			"metodo_pagamento": "PIX",
		}), env.token)
	assert.Equal(t, http.StatusUnprocessableEntity, vendaResp.StatusCode)
	vendaResp.Body.Close()

	prodResp := do(t, env.server, "GET", "/v1/produtos/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Estoque int `json:"estoque"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 2, prod.Estoque)
}

func TestE2E_MovimentacaoAuditoria(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/v1/caixa/abrir",
		jsonBody(t, map[string]any{"valor_inicial": 100}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/caixa/movimentacao",
		jsonBody(t, map[string]any{
			"tipo":   "SANGRIA",
			"valor":  40,
			"motivo": "Depósito no cofre",
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// No worker pool runs here, so the enqueued audit jobs stay in the
	// list. LPush puts the newest job at the head: the movement's action
	// carries its kind.
	jobs, err := env.rdb.LRange(context.Background(), worker.QueueAuditoria, 0, -1).Result()
	require.NoError(t, err)
	require.NotEmpty(t, jobs)
	assert.Contains(t, jobs[0], `CASH_SANGRIA`)
}

func TestE2E_FiscalNumbering(t *testing.T) {
	env := setupTestEnv(t)

	emitir := func(tipo string) int {
		resp := do(t, env.server, "POST", "/v1/fiscal/notas",
			jsonBody(t, map[string]any{
				"tipo":              tipo,
				"nome_cliente":      "Cliente E2E",
				"documento_cliente": "12345678901",
				"valor_total":       90,
			}), env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var nota struct {
			Numero int    `json:"numero"`
			Status string `json:"status"`
		}
		decodeJSON(t, resp, &nota)
		assert.Equal(t, "AUTORIZADA", nota.Status)
		return nota.Numero
	}

	assert.Equal(t, 1, emitir("NFCE"))
	assert.Equal(t, 2, emitir("NFCE"))
	assert.Equal(t, 1, emitir("NFE")) // independent counter
}
