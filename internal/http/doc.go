// Package http provides HTTP handlers and middleware for the household hub
// API.
//
// The router exposes the following endpoints:
//   - GET /people, POST /people, PUT /people/{id}, DELETE /people/{id}:
//     household member management exchanging the `personDTO` payload defined
//     in person_handler.go.
//   - GET /chores, POST /chores, PUT /chores/{id}, DELETE /chores/{id},
//     POST /chores/{id}/toggle: chore management exchanging the `choreDTO`
//     payload defined in chore_handler.go, including optional recurrence
//     rules and reminder times.
//   - GET /alarms, POST /alarms, PUT /alarms/{id}, DELETE /alarms/{id},
//     POST /alarms/{id}/toggle, POST /alarms/{id}/dismiss: alarm lifecycle
//     endpoints. Dismissing a ringing one-time alarm also disarms it.
//   - GET /timers, POST /timers, POST /timers/{id}/pause,
//     POST /timers/{id}/resume, DELETE /timers/{id}: countdown timers. The
//     per-second countdown runs server side in the notification tick loop.
//   - GET /groceries, POST /groceries, POST /groceries/{id}/toggle,
//     DELETE /groceries/{id}: the shared shopping list.
//   - GET /routines, POST /routines, PUT /routines/{id},
//     DELETE /routines/{id}, POST /routines/{id}/steps/{index}/toggle,
//     POST /routines/{id}/reset: reusable checklists.
//   - GET /calendar/{YYYY-MM}: the expanded occurrence index for one month.
//   - GET /calendar/feed.ics: the household calendar as an iCalendar feed.
//   - GET /triggers, POST /triggers/{id}/ack: the recent notification feed
//     produced by the tick loop.
//   - POST /intents: the assistant intent envelope decoded and dispatched
//     into the services.
//
// Request/response DTOs live alongside their respective handlers so tests
// and documentation share the same ground truth.
package http
