// Package inspect provides read-only image analysis: pixel color sampling
// and dominant color extraction. Inspection never commits to the session
// history.
package inspect
