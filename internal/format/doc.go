// Package format compiles filename templates and renders them against
// per-image metadata.
//
// A template mixes literal text, {category.field} metadata expansions,
// and strftime-style date directives applied to the capture timestamp:
//
//	tmpl, err := format.Compile("%Y-%m-%d_{camera.model}_{image.original_filename}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	name := tmpl.Render(rec) // "2024-03-05_X100V_DSCF0042"
//
// # Metadata fields
//
//   - camera.make, camera.model
//   - camera.shutter_speed, camera.iso, camera.exposure_compensation
//   - lens.make, lens.model, lens.focal_length, lens.fstop
//   - image.width, image.height
//   - image.original_filename
//
// Field names are case-sensitive; an unrecognized name is a compile
// error (UnknownFieldError), never a silent drop.
//
// # Date directives
//
// %Y %y %m %d %e %H %M %S %j, matching their strftime meanings. "%%"
// renders a literal percent sign and "{{" a literal opening brace.
//
// # Collision safety
//
// A template that never mentions image.original_filename would render
// identically for every frame of a burst. Compile therefore appends
// the original filename automatically when it is absent, keeping
// output names distinct per input file.
package format
