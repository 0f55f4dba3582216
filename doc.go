// Package stockwatch tracks a fixed watch list of equities against a
// per-symbol baseline price and flags symbols whose drawdown has reached a
// configured target drop.
//
// The core functionalities include:
//   - Watch-list Registry: immutable reference data (display name, category,
//     target-drop percentage) loaded once from configuration.
//   - Tracking Store: per-symbol price history with a baseline fixed at the
//     first recorded observation, idempotent upsert-by-date, and lossless
//     JSON persistence with atomic saves.
//   - Signal Evaluation: classification of every symbol as observing or as a
//     buy candidate once its cumulative drawdown reaches the target drop.
//   - Report Generation: a deterministic daily report model (overview rows
//     plus triggered signals) rendered to markdown by the renderer package.
//
// The package is the foundational logic for the `swt` command-line tool.
// It never reads an ambient clock: dates and generation timestamps are
// explicit parameters, which keeps every computation reproducible.
package stockwatch
