// Package media implements the image workflow behind the car and driver
// forms.
//
// A Session owns the ordered image set of one entity while its form is open.
// Images picked for an entity that has no server identifier are staged
// locally and referenced by ephemeral "local:" handles. Once the entity has an
// identifier every change goes through the attachment endpoints, and the list
// the server answers with replaces the local set wholesale.
//
// Submitting a new entity runs Finalize: the entity is created without
// images, the staged files are uploaded against the new identifier, and the
// staged copies are released. If the upload fails the caller gets an
// *UploadError and can either submit again or Discard, which deletes the
// speculatively created entity. A failed delete is reported as *OrphanError.
//
// Session is not safe for concurrent use; the owning form serializes calls.
package media
