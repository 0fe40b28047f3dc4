package toc

const stylesheet = `
.deeptoc { position: sticky; top: 16px; max-height: calc(100vh - 32px); overflow-y: auto; font-size: 13px; line-height: 1.5; }
.deeptoc-title { font-weight: 600; margin-bottom: 6px; }
.deeptoc-list { list-style: none; margin: 0; padding: 0; }
.deeptoc-link { display: block; padding-top: 2px; padding-bottom: 2px; color: inherit; text-decoration: none; border-left: 2px solid transparent; }
.deeptoc-link:hover { text-decoration: underline; }
.deeptoc-link.active { border-left-color: currentColor; font-weight: 600; }
`
