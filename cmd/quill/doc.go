// Quill drafts git commit messages from staged changes using LLM providers.
//
// It collects the staged diff, asks a chat-completion model for a one-line
// summary of each changed file, then asks for a Conventional Commits title
// over the aggregate. The result is printed to stdout or written into the
// commit message file when installed as a prepare-commit-msg hook.
//
// Usage:
//
//	quill generate                    # print a drafted message for staged changes
//	quill generate --commit           # draft and open git commit --edit with it
//	quill hook install                # install the prepare-commit-msg hook
//	quill prepare-commit-msg <file>   # hook entry point (invoked by git)
//	quill config init                 # write a default settings file
//	quill credentials path            # show where the API key file lives
//
// See https://github.com/quill-dev/quill for full documentation.
package main
