// SPDX-License-Identifier: MIT

package dataset

import "sync"

// JoinStep is one equality join against the accumulated result: the table
// to bring in, and the paired columns to match it on. Only inner-equality
// joins are supported; outer joins would require a general relational
// engine this package deliberately does not carry.
type JoinStep struct {
	TableToJoin   string
	LeftJoinKeys  []string
	RightJoinKeys []string
}

// JoinPlan describes how to join a dataset's tables into one row stream,
// starting from InitTable and applying Steps in order.
type JoinPlan struct {
	InitTable string
	Steps     []JoinStep
}

// Registry is an immutable-by-default, concurrency-safe mapping from
// dataset name to JoinPlan. NewRegistry seeds it with the built-in plans
// (tpch, soccer); Add lets a deployment register additional plans (e.g.
// sourced from a viper config overlay in cmd/shapleyctl) without
// recompiling.
type Registry struct {
	mu    sync.RWMutex
	plans map[string]JoinPlan
}

// NewRegistry builds a Registry seeded with the built-in plans.
func NewRegistry() *Registry {
	r := &Registry{plans: make(map[string]JoinPlan, len(builtinPlans))}
	for name, plan := range builtinPlans {
		r.plans[name] = plan
	}
	return r
}

// Add registers (or overwrites) a named join plan.
func (r *Registry) Add(name string, plan JoinPlan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[name] = plan
}

// Lookup returns the join plan registered for name.
func (r *Registry) Lookup(name string) (JoinPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.plans[name]
	if !ok {
		return JoinPlan{}, ErrMissingJoinPlan
	}
	return plan, nil
}

// builtinPlans covers the TPC-H region chain and the European Soccer
// Database schema.
var builtinPlans = map[string]JoinPlan{
	"tpch": {
		InitTable: "region",
		Steps: []JoinStep{
			{TableToJoin: "nation", LeftJoinKeys: []string{"r_regionkey"}, RightJoinKeys: []string{"n_regionkey"}},
			{TableToJoin: "supplier", LeftJoinKeys: []string{"n_nationkey"}, RightJoinKeys: []string{"s_nationkey"}},
			{TableToJoin: "partsupp", LeftJoinKeys: []string{"s_suppkey"}, RightJoinKeys: []string{"ps_suppkey"}},
			{TableToJoin: "part", LeftJoinKeys: []string{"ps_partkey"}, RightJoinKeys: []string{"p_partkey"}},
			{TableToJoin: "lineitem", LeftJoinKeys: []string{"p_partkey", "ps_suppkey"}, RightJoinKeys: []string{"l_partkey", "l_suppkey"}},
			{TableToJoin: "orders", LeftJoinKeys: []string{"l_orderkey"}, RightJoinKeys: []string{"o_orderkey"}},
			{TableToJoin: "customer", LeftJoinKeys: []string{"o_custkey"}, RightJoinKeys: []string{"c_custkey"}},
		},
	},
	"soccer": {
		InitTable: "Match",
		Steps: []JoinStep{
			{TableToJoin: "Country", LeftJoinKeys: []string{"country_id"}, RightJoinKeys: []string{"id"}},
			{TableToJoin: "HomeTeam", LeftJoinKeys: []string{"home_team_api_id"}, RightJoinKeys: []string{"team_api_id"}},
			{TableToJoin: "AwayTeam", LeftJoinKeys: []string{"away_team_api_id"}, RightJoinKeys: []string{"team_api_id"}},
			{TableToJoin: "League", LeftJoinKeys: []string{"league_id"}, RightJoinKeys: []string{"id"}},
		},
	},
}
