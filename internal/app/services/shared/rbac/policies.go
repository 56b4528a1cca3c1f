package rbac

import "consulat-service/internal/pkg/constvars"

const modelDefinition = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// roleHierarchy lists (member, inherited) pairs. Staff can do everything a citizen can.
var roleHierarchy = [][]string{
	{constvars.RoleAgent, constvars.RoleCitizen},
	{constvars.RoleAdmin, constvars.RoleAgent},
	{constvars.RoleSuperadmin, constvars.RoleAdmin},
}

// routePolicies are relative to the versioned API root.
var routePolicies = [][]string{
	{constvars.RoleCitizen, "/profiles/me", "^GET$"},
	{constvars.RoleCitizen, "/profiles/me/location", "^PUT$"},
	{constvars.RoleCitizen, "/requests", "^(GET|POST)$"},
	{constvars.RoleCitizen, "/requests/:requestID", "^GET$"},
	{constvars.RoleCitizen, "/requests/:requestID/submit", "^POST$"},
	{constvars.RoleCitizen, "/requests/:requestID/cancel", "^POST$"},
	{constvars.RoleCitizen, "/requests/:requestID/workflow/progress", "^GET$"},
	{constvars.RoleCitizen, "/requests/:requestID/payment-intent", "^POST$"},
	{constvars.RoleCitizen, "/requests/:requestID/payments", "^GET$"},
	{constvars.RoleCitizen, "/workflow/validate-transition", "^POST$"},
	{constvars.RoleCitizen, "/appointments", "^POST$"},
	{constvars.RoleCitizen, "/appointments/slots", "^GET$"},
	{constvars.RoleCitizen, "/appointments/me", "^GET$"},
	{constvars.RoleCitizen, "/appointments/:appointmentID/cancel", "^POST$"},
	{constvars.RoleCitizen, "/documents", "^POST$"},
	{constvars.RoleCitizen, "/documents/me", "^GET$"},
	{constvars.RoleCitizen, "/documents/analyze", "^POST$"},
	{constvars.RoleCitizen, "/documents/:documentID", "^GET$"},
	{constvars.RoleCitizen, "/documents/:documentID/analyze", "^POST$"},
	{constvars.RoleCitizen, "/places/*", "^GET$"},
	{constvars.RoleCitizen, "/tickets", "^POST$"},
	{constvars.RoleCitizen, "/tickets/me", "^GET$"},
	{constvars.RoleCitizen, "/tickets/:ticketID", "^GET$"},
	{constvars.RoleCitizen, "/tickets/:ticketID/messages", "^POST$"},

	{constvars.RoleAgent, "/requests/:requestID/status", "^PATCH$"},
	{constvars.RoleAgent, "/appointments/:appointmentID/complete", "^POST$"},
	{constvars.RoleAgent, "/appointments/:appointmentID/no-show", "^POST$"},
	{constvars.RoleAgent, "/orgs/:orgID/appointments", "^GET$"},
	{constvars.RoleAgent, "/orgs/:orgID/payments", "^GET$"},
	{constvars.RoleAgent, "/orgs/:orgID/payments/stats", "^GET$"},
	{constvars.RoleAgent, "/orgs/:orgID/statistics", "^GET$"},
	{constvars.RoleAgent, "/calls", "^POST$"},

	{constvars.RoleAdmin, "/orgs/:orgID/agent-schedules", "^PUT$"},

	{constvars.RoleSuperadmin, "/tickets", "^GET$"},
	{constvars.RoleSuperadmin, "/tickets/:ticketID/status", "^PATCH$"},
	{constvars.RoleSuperadmin, "/tickets/:ticketID/assign", "^POST$"},
}
