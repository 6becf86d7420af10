// Package planner turns a plan request into placed study blocks.
//
// Manager.Generate tries the remote planner when the request asks for it and
// falls back to the local allocator on any remote failure. The caller never
// sees a remote error; the returned PlanResult's Mode tells which path
// produced the blocks.
package planner
