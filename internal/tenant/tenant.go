package tenant

// Context identifica o salão dono da requisição. Sempre explícito,
// nunca lido de estado global, para evitar bugs de "tenant errado".
type Context struct {
	BusinessID uint
}

func New(businessID uint) Context {
	return Context{BusinessID: businessID}
}
