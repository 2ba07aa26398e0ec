// Package organizer sorts the images of a flat folder into year subfolders.
//
// Organize lists the folder's direct children, keeps regular files whose
// content sniffs as an image, asks the year resolver for each image's year and
// groups them by year. Each group is then moved into <folder>/<year>, which is
// created on demand and never removed. An image whose base name is already
// present in its year folder is left in place and reported as a conflict, so
// running the organizer again after an interrupted run never overwrites or
// duplicates anything.
//
// Progress is returned as a Report; rendering it is left to the caller.
package organizer
