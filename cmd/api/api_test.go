package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/awessel/todo-api/internal/config"
)

// TestAPI_RegisterThenTodoLifecycle drives the full flow through the real
// router: register for a token, then create, complete, and delete a todo
// with it, and confirm the deleted todo is gone.
func TestAPI_RegisterThenTodoLifecycle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// 1) POST /auth/register
	mock.ExpectQuery(`INSERT INTO users \(id, username, email, password_hash\)`).
		WithArgs(sqlmock.AnyArg(), "alice", "alice@x.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(uuid.New(), "alice", "alice@x.com", "hash", time.Now()))

	// 2) POST /todo
	mock.ExpectQuery(`INSERT INTO todos \(title, description\)`).
		WithArgs("buy milk", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "done", "created_at"}).
			AddRow(1, "buy milk", "", false, time.Now()))

	// 3) PATCH /todo/1/done
	mock.ExpectQuery(`UPDATE todos\s+SET done = true`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "done", "created_at"}).
			AddRow(1, "buy milk", "", true, time.Now()))

	// 4) DELETE /todo/1
	mock.ExpectExec(`DELETE FROM todos WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// 5) GET /todo/1 after delete
	mock.ExpectQuery(`SELECT id, title, description, done, created_at`).
		WithArgs(int64(1)).
		WillReturnError(sql.ErrNoRows)

	cfg := config.Config{JWTSecret: "test-secret-for-integration"}
	srv := httptest.NewServer(newRouter(db, nil, cfg))
	defer srv.Close()

	// Register
	regBody, _ := json.Marshal(map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "secret123",
	})
	regResp, err := http.Post(srv.URL+"/auth/register", "application/json", bytes.NewReader(regBody))
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	defer regResp.Body.Close()
	if regResp.StatusCode != http.StatusOK {
		t.Fatalf("register status: got %d, want 200", regResp.StatusCode)
	}
	var regOut struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.NewDecoder(regResp.Body).Decode(&regOut); err != nil || !regOut.Success || regOut.Token == "" {
		t.Fatalf("register response: %+v err=%v", regOut, err)
	}
	token := regOut.Token

	// Create todo
	createBody, _ := json.Marshal(map[string]string{"title": "buy milk"})
	created := doAuthed(t, srv.URL, "POST", "/todo", token, createBody)
	defer created.Body.Close()
	if created.StatusCode != http.StatusCreated {
		t.Fatalf("create status: got %d, want 201", created.StatusCode)
	}
	var todo struct {
		ID   int64 `json:"id"`
		Done bool  `json:"done"`
	}
	if err := json.NewDecoder(created.Body).Decode(&todo); err != nil || todo.ID != 1 {
		t.Fatalf("create response: %+v err=%v", todo, err)
	}

	// Mark done
	done := doAuthed(t, srv.URL, "PATCH", "/todo/1/done", token, nil)
	defer done.Body.Close()
	if done.StatusCode != http.StatusOK {
		t.Fatalf("mark done status: got %d, want 200", done.StatusCode)
	}
	if err := json.NewDecoder(done.Body).Decode(&todo); err != nil || !todo.Done {
		t.Fatalf("mark done response: %+v err=%v", todo, err)
	}

	// Delete
	del := doAuthed(t, srv.URL, "DELETE", "/todo/1", token, nil)
	del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: got %d, want 204", del.StatusCode)
	}

	// Gone
	get := doAuthed(t, srv.URL, "GET", "/todo/1", token, nil)
	get.Body.Close()
	if get.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status: got %d, want 404", get.StatusCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAPI_TodoRequiresToken(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	cfg := config.Config{JWTSecret: "test-secret-for-integration"}
	srv := httptest.NewServer(newRouter(db, nil, cfg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/todo")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest("GET", srv.URL+"/todo", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Errorf("status with garbage token: got %d, want 401", resp2.StatusCode)
	}
}

func doAuthed(t *testing.T, base, method, path, token string, body []byte) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, base+path, bytes.NewReader(body))
	} else {
		req, err = http.NewRequest(method, base+path, nil)
	}
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}
