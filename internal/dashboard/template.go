package dashboard

// pageHTML is the whole dashboard: markup, styles and the client-side
// search/filter/sort logic over the rendered file list.
const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Digest archive</title>
<style>
  :root{
    --bg:#00bed6; --card:#ffffff; --ink:#0f172a; --muted:#64748b;
    --border:#e5e7eb; --shadow:0 10px 30px rgba(0,0,0,.12); --radius:16px;
  }
  body{margin:0;background:var(--bg);color:var(--ink);
    font-family:system-ui,-apple-system,Segoe UI,Roboto,Arial,sans-serif}
  .page{max-width:min(96vw,1200px);margin:0 auto;padding:16px}
  .hero{color:#fff}
  .hero h1{margin:0 0 6px;font-size:28px}
  .hero p{margin:0 0 12px;opacity:.9}
  .card{background:var(--card);border-radius:var(--radius);box-shadow:var(--shadow);padding:24px}
  .toolbar{display:flex;gap:12px;flex-wrap:wrap;align-items:end;
    border-bottom:1px solid var(--border);padding-bottom:12px;margin-bottom:14px}
  .field{display:flex;flex-direction:column;gap:6px}
  label{font-size:12px;color:var(--muted)}
  input[type="search"],select{padding:8px 10px;border:1px solid var(--border);border-radius:10px}
  input[type="search"]{min-width:260px}
  ul{list-style:none;margin:0;padding:0}
  li.pdf{display:flex;justify-content:space-between;gap:12px;
    padding:8px 4px;border-bottom:1px solid var(--border)}
  li.pdf a{color:#0369a1;text-decoration:none}
  li.pdf a:hover{text-decoration:underline}
  .meta{color:var(--muted);font-size:13px;white-space:nowrap}
  .group-tag{color:var(--muted);font-size:12px;margin-left:8px}
  #empty{color:var(--muted);padding:16px 4px;display:none}
</style>
</head>
<body>
<div class="page">
  <div class="hero">
    <h1>Digest archive</h1>
    <p>Generated {{fmtTime .Generated}} &middot; {{len .Entries}} files</p>
  </div>
  <div class="card">
    <div class="toolbar">
      <div class="field">
        <label for="q">Search</label>
        <input type="search" id="q" placeholder="Filename...">
      </div>
      <div class="field">
        <label for="group">Group</label>
        <select id="group">
          <option value="">All</option>
          {{range .Groups}}<option value="{{.}}">{{.}}</option>{{end}}
        </select>
      </div>
      <div class="field">
        <label for="yr">Year</label>
        <select id="yr">
          <option value="">All</option>
          {{range .Years}}<option value="{{.}}">{{.}}</option>{{end}}
        </select>
      </div>
      <div class="field">
        <label for="sort">Sort</label>
        <select id="sort">
          <option value="newest">Newest first</option>
          <option value="oldest">Oldest first</option>
          <option value="name">Name</option>
        </select>
      </div>
    </div>
    <ul id="list">
      {{range .Entries}}
      <li class="pdf" data-name="{{.Name}}" data-group="{{.Group}}"
          data-year="{{year .Modified}}" data-mtime="{{.Modified.Unix}}">
        <span><a href="{{.RelPath}}">{{.Name}}</a><span class="group-tag">{{.Group}}</span></span>
        <span class="meta">{{fmtTime .Modified}}</span>
      </li>
      {{end}}
    </ul>
    <div id="empty">No files match the current filters.</div>
  </div>
</div>
<script>
(function(){
  var q = document.getElementById('q');
  var group = document.getElementById('group');
  var yr = document.getElementById('yr');
  var sortSel = document.getElementById('sort');
  var list = document.getElementById('list');
  var empty = document.getElementById('empty');

  function apply(){
    var needle = q.value.trim().toLowerCase();
    var g = group.value, y = yr.value;
    var items = Array.prototype.slice.call(list.querySelectorAll('li.pdf'));
    var shown = 0;
    items.forEach(function(li){
      var ok = (!needle || li.dataset.name.toLowerCase().indexOf(needle) !== -1)
        && (!g || li.dataset.group === g)
        && (!y || li.dataset.year === y);
      li.style.display = ok ? '' : 'none';
      if (ok) shown++;
    });
    items.sort(function(a, b){
      switch (sortSel.value) {
        case 'oldest': return a.dataset.mtime - b.dataset.mtime;
        case 'name': return a.dataset.name.localeCompare(b.dataset.name);
        default: return b.dataset.mtime - a.dataset.mtime;
      }
    });
    items.forEach(function(li){ list.appendChild(li); });
    empty.style.display = shown ? 'none' : '';
  }

  [q, group, yr, sortSel].forEach(function(el){
    el.addEventListener('input', apply);
    el.addEventListener('change', apply);
  });
  apply();
})();
</script>
</body>
</html>
`
