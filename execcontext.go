package scalarval

// ExecContext is the explicitly-passed per-executor context §9's Design
// Notes recommend in place of relying solely on the process-wide
// TempPool: "model as explicitly passed context (an executor context
// holding the pool) rather than a process-wide singleton."
//
// A nil *ExecContext (or a zero-value one with no Pool set) falls back
// to TempPool, so existing convenience call sites keep working.
type ExecContext struct {
	Pool Pool
}

// NewExecContext returns an ExecContext backed by a fresh Pool.
func NewExecContext() *ExecContext {
	return &ExecContext{Pool: NewPool()}
}

// pool resolves the effective Pool for this context, falling back to
// the process-wide TempPool.
func (c *ExecContext) pool() Pool {
	if c == nil || c.Pool == nil {
		return TempPool
	}
	return c.Pool
}

// Reset invalidates every Value this context's pool has allocated.
func (c *ExecContext) Reset() {
	c.pool().Reset()
}

// NewVarchar builds a Varchar Value backed by this context's pool.
func (c *ExecContext) NewVarchar(s []byte) Value {
	return newVarcharKind(KindVarchar, s, c.pool())
}

// NewVarbinary builds a Varbinary Value backed by this context's pool.
func (c *ExecContext) NewVarbinary(b []byte) Value {
	return newVarcharKind(KindVarbinary, b, c.pool())
}
