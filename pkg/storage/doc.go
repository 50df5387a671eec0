// Package storage manages the photo root and per-station directories.
//
// The root is created explicitly by NewManager; station directories are
// created on first use. Files are written to a temporary name in the
// station directory and renamed into place, so a rerun replaces earlier
// downloads without leaving partial files behind.
//
//	manager, err := storage.NewManager("data/srer/photos")
//	if err != nil {
//	    return err
//	}
//	n, err := manager.SaveFile(body, "101", "photo1.jpg")
package storage
