// Package objecttree manages the generic hierarchical project tree
// (folders, scripts, graphics, value objects, ...) stored in system_objects.
//
// Screens can be registered two ways: as rows in the screens table, or as
// Graphic objects in this tree that point at a screen. List reconciles the
// two without persisting anything: every enabled screen that no object
// links to is returned as a synthetic VirtualScreenNode, recomputed on each
// read.
//
// Creating a Graphic object provisions its backing screen in the same
// transaction, so neither ever exists without the other.
//
// Virtual node ids are VirtualIDOffset + screen id. Real object ids must stay
// below the offset; nothing here enforces that.
package objecttree
