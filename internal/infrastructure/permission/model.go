package permission

// rbacModel grants a subject the permissions of every role linked to it by g.
// Subjects are user emails; roles are "usuario" and "suporte".
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Resources and actions checked by the HTTP layer.
const (
	ResourceTicket = "ticket"
	ResourceUser   = "user"

	ActionRead         = "read"
	ActionCreate       = "create"
	ActionMessage      = "message"
	ActionChangeStatus = "change_status"
)
