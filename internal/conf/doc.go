// Package conf locates and parses the i3xrocks configuration and hands
// every block section to the caller.
//
// # Usage
//
// Sections are delivered, in file order, to a SectionFunc:
//
//	l := &conf.Loader{}
//	err := l.Load("", func(section *kv.Map) error {
//	    fmt.Println(section.Value("name"), section.Value("command"))
//	    return nil
//	})
//
// For a main file followed by a drop-in directory, use Source:
//
//	src := &conf.Source{DropInDir: "/etc/i3xrocks/conf.d", Quiet: true}
//	err := src.Read(fn)
//
// Source.Watch reports changes to any of those files.
//
// # File Format
//
// Keys written before the first "[name]" header are global defaults:
// every following section starts as a copy of them, with the "name" key
// set to the header. Later keys override earlier ones.
//
//	interval=5
//	color=#ffffff
//
//	[time]
//	command=date +%H:%M
//
//	[battery]
//	interval=30
//
// # Load Order
//
// Load stops at the first existing file of:
//
//  1. The explicit path, if any (nothing else is tried)
//  2. $XDG_CONFIG_HOME/i3xrocks/config, or $HOME/.config/i3xrocks/config
//  3. $HOME/.i3xrocks.conf
//  4. <dir>/i3xrocks/config for each dir of $XDG_CONFIG_DIRS,
//     or /etc/xdg/i3xrocks/config
//  5. /etc/i3xrocks.conf
//
// Before parsing, the working directory is changed to the directory of
// the file, so relative paths in commands resolve next to it.
//
// LoadDir reads every entry of a directory in lexicographic order. Global
// defaults accumulate across the files of one directory.
//
// # Internal Architecture
//
//   - resolver: per-call state (global defaults, open section, callback).
//     It receives the events of the ini reader and turns them into
//     finalized sections.
//
//   - Loader: candidate resolution, file opening and directory scanning
//     on top of a sys.System.
//
//   - Source: layers a main file and a drop-in directory, and watches
//     them with fsnotify.
package conf
