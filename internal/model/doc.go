// Package model defines the coordinate types shared by the validator, the writer and the
// storage engines.
//
// Conventions:
//   - Wire fields use the browser's names: x, y, deltaX, deltaY, direction
//   - Columns use snake_case: x, y, delta_x, delta_y, direction
//   - Inbound values are kept exactly as decoded (numbers as json.Number); nothing is coerced
//     before it reaches the storage engine
package model
