// Package database opens the Postgres pool, runs the schema migrations and
// defines the narrow query interface the store speaks. FakeDB, FakeRow and
// FakeRows stand in for the pool in tests that never touch a server.
package database

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB 是 store 使用的最小查詢介面，*pgxpool.Pool 直接實作。
// 單筆查詢（使用者、貼文、INSERT ... RETURNING）走 QueryRow，
// 列表走 Query，UPDATE / DELETE 看 Exec 的 RowsAffected。
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(context.Context) error
	Close()
}

// FakeDB 未設定的方法被呼叫時 panic，Close 除外
type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	PingFn     func(ctx context.Context) error
	CloseFn    func()
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFn != nil {
		return f.ExecFn(ctx, sql, args...)
	}
	panic("unexpected Exec: " + sql)
}

func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.QueryFn != nil {
		return f.QueryFn(ctx, sql, args...)
	}
	panic("unexpected Query: " + sql)
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.QueryRowFn != nil {
		return f.QueryRowFn(ctx, sql, args...)
	}
	panic("unexpected QueryRow: " + sql)
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected Ping")
}

func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}

// FakeRow 依序把 Values 寫入 Scan 的目標；ScanErr 優先回傳
type FakeRow struct {
	Values  []any
	ScanErr error
}

func (r *FakeRow) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	if len(dest) != len(r.Values) {
		panic(fmt.Sprintf("FakeRow.Scan: want %d dest, got %d", len(r.Values), len(dest)))
	}
	for i, v := range r.Values {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

// FakeRows 逐筆回傳 Data，RowsErr 是迭代結束後 Err 的結果
type FakeRows struct {
	Data    [][]any
	ScanErr error
	RowsErr error

	idx int
}

func (r *FakeRows) Close()                                       {}
func (r *FakeRows) Err() error                                   { return r.RowsErr }
func (r *FakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *FakeRows) Next() bool                                   { return r.idx < len(r.Data) }
func (r *FakeRows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	row := &FakeRow{Values: r.Data[r.idx]}
	r.idx++
	return row.Scan(dest...)
}
func (r *FakeRows) Values() ([]any, error) { return nil, nil }
func (r *FakeRows) RawValues() [][]byte    { return nil }
func (r *FakeRows) Conn() *pgx.Conn        { return nil }

// Affected builds the command tag an UPDATE or DELETE reports for n rows.
func Affected(verb string, n int) pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("%s %d", verb, n))
}
